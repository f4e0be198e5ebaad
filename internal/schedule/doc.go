// Package schedule runs configured bulk operations on cron expressions.
//
// Each schedules entry in config.yaml ("30 7 * * *" activate,
// "0 23 * * *" deactivate) becomes a cron job dispatching into the home
// coordinator. Executions triggered here are journalled with trigger
// type "schedule" and the cron expression as the source, so the journal
// distinguishes a morning schedule from an API call.
//
// Standard 5-field cron expressions plus the @descriptors of
// robfig/cron ("@daily", "@every 1h") are accepted. Parsing happens at
// Start, so a bad expression fails startup rather than silently never
// firing.
package schedule
