package credentials

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("credential not found")

// Keys written by the login, signup and profile flows.
const (
	KeyUserName       = "userName"
	KeyUserEmail      = "userEmail"
	KeyUserPassword   = "userPassword"
	KeyUserMobile     = "userMobile"
	KeyUserProfilePic = "userProfilePic"
)

// Store is the opaque key-value credential storage behind login, signup
// and profile. The checkout core never touches it.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
}
