package domain

import "time"

// Identity is the snapshot of a resolved user taken when an OTP session is
// issued. It never changes for the life of the session.
type Identity struct {
	UserID int64  `json:"id"`
	Email  string `json:"username"`
	Role   string `json:"role"`
	Name   string `json:"name"`
}

// OtpSession is the in-memory state of one OTP exchange. It lives only in
// process memory, keyed by an opaque token; the plaintext code is never
// stored, only its digest.
type OtpSession struct {
	Token     string
	Identity  Identity
	OTPHash   []byte
	ExpiresAt time.Time
	Attempts  int
	Used      bool
	CreatedAt time.Time
}
