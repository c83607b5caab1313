// Package model defines the domain types shared across grabr.
package model

import "time"

// CloneRecord is one successful acquisition, kept for `grabr history`.
type CloneRecord struct {
	// UID is a unique identifier for the record
	UID string `json:"uid"`

	// Reference is the reference string the operator supplied
	Reference string `json:"reference"`

	// URL is the clone URL that actually succeeded
	URL string `json:"url"`

	// Path is the absolute path of the working copy
	Path string `json:"path"`

	// Branch is the requested branch, empty for the remote default
	Branch string `json:"branch,omitempty"`

	// Transport is "ssh", "https" or "other"
	Transport string `json:"transport"`

	// Fallback records whether the HTTPS fallback was used
	Fallback bool `json:"fallback"`

	// CreatedAt is when the clone completed
	CreatedAt time.Time `json:"created_at"`
}

// Account is a provisioned secure-shell identity for one hosting-provider
// account. Multiple accounts on the same host are told apart by alias.
type Account struct {
	// Label is the operator-chosen name (e.g. "work")
	Label string `json:"label"`

	// Host is the hosting provider (e.g. github.com)
	Host string `json:"host"`

	// Alias is the ~/.ssh/config host alias (e.g. github.com-work)
	Alias string `json:"alias"`

	// IdentityFile is the private key path
	IdentityFile string `json:"identity_file"`

	// Comment is the key comment, usually an email address
	Comment string `json:"comment,omitempty"`

	// CreatedAt is when the key was generated
	CreatedAt time.Time `json:"created_at"`
}
