// Package domain defines reporting channels.
//
// A channel is an organization's public entry point for reporters. Reporters reach it
// with its access code, which resolves to the organization public key they seal case
// content to. Every case is submitted through exactly one channel.
package domain

import (
	"crypto/rand"
	"io"
	"time"

	"github.com/google/uuid"
)

// AccessCodeLength is the fixed length of a channel access code.
const AccessCodeLength = 8

const accessCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// accessCodeByteLimit is the largest multiple of the alphabet size that fits in a
// byte. Random bytes at or above it are discarded so every symbol is equally likely.
const accessCodeByteLimit = 256 - 256%len(accessCodeAlphabet)

// Channel is the at-rest channel record.
type Channel struct {
	ID                uuid.UUID
	OrganizationID    uuid.UUID
	Title             string
	Description       string
	AccessCode        string
	SubmissionMessage string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ValidAccessCode reports whether code has the access code shape: eight ASCII letters
// or digits.
func ValidAccessCode(code string) bool {
	if len(code) != AccessCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// GenerateAccessCode draws a random access code from r. A nil r uses crypto/rand.
func GenerateAccessCode(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	code := make([]byte, 0, AccessCodeLength)
	buf := make([]byte, AccessCodeLength*2)
	for len(code) < AccessCodeLength {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= accessCodeByteLimit {
				continue
			}
			code = append(code, accessCodeAlphabet[int(b)%len(accessCodeAlphabet)])
			if len(code) == AccessCodeLength {
				break
			}
		}
	}
	return string(code), nil
}

// CreateChannelInput carries a new channel. An empty AccessCode asks the use case to
// generate one; a nil IsActive means active.
type CreateChannelInput struct {
	OrganizationID    uuid.UUID
	Title             string
	Description       string
	AccessCode        string
	SubmissionMessage string
	IsActive          *bool
}

// UpdateChannelInput changes the non-nil fields of a channel.
type UpdateChannelInput struct {
	ID                uuid.UUID
	OrganizationID    uuid.UUID
	Title             *string
	Description       *string
	AccessCode        *string
	SubmissionMessage *string
	IsActive          *bool
}

// Apply copies the non-nil fields of input onto ch. It reports whether any field was
// set.
func (input *UpdateChannelInput) Apply(ch *Channel) bool {
	changed := false
	if input.Title != nil {
		ch.Title = *input.Title
		changed = true
	}
	if input.Description != nil {
		ch.Description = *input.Description
		changed = true
	}
	if input.AccessCode != nil {
		ch.AccessCode = *input.AccessCode
		changed = true
	}
	if input.SubmissionMessage != nil {
		ch.SubmissionMessage = *input.SubmissionMessage
		changed = true
	}
	if input.IsActive != nil {
		ch.IsActive = *input.IsActive
		changed = true
	}
	return changed
}

// Counts summarizes an organization's channels.
type Counts struct {
	Total  int64
	Active int64
}

// ReportingChannel is what a reporter learns from an access code: where the case goes
// and the key to seal it to.
type ReportingChannel struct {
	Channel               *Channel
	OrganizationPublicKey string // sodium-encoded
}
