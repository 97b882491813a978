// Package credential resolves the mail-account credentials exactly once at
// startup.
//
// A Source is selected by deployment mode: ModeLocal returns values taken
// from configuration/environment, ModeSSM reads two SecureString parameters
// from AWS Systems Manager Parameter Store. Any other mode, and any missing
// parameter, is an error the caller must treat as fatal.
package credential
