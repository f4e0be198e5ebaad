// Package auth provides authentication for the Hearth API.
//
// Hearth runs with a single provisioned administrator whose credentials
// live in the configuration file, so there is no user store:
//   - Argon2id password hashing (OWASP 2025 recommendation), stored as a
//     PHC string in security.admin.password_hash
//   - Short-lived JWT access tokens (HS256), validated by signature only
//
// The Authenticator wraps both so the API layer never touches the raw
// secret or hash.
package auth
