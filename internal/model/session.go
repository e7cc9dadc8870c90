package model

import "time"

// Session records one login. LogoutDate is nil while the session is active.
//
// Token is an opaque random handle (an xid) that the JWT carries, so the
// integer primary key never leaves the server.
type Session struct {
	ID         int64      `json:"id"                   db:"id"`
	UserID     int64      `json:"userId"               db:"user_id"`
	Token      string     `json:"-"                    db:"token"`
	LoginDate  time.Time  `json:"loginDate"            db:"login_date"`
	LogoutDate *time.Time `json:"logoutDate,omitempty" db:"logout_date"`
}

// Active reports whether the session has not been logged out.
func (s *Session) Active() bool {
	return s.LogoutDate == nil
}
