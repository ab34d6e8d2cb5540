package nbastats

import (
	"errors"
	"fmt"
)

// FetchError wraps any failed upstream lookup. Per-game fetch errors are
// logged with the game id and the game is dropped from the batch; they are
// never fatal to the pipeline.
type FetchError struct {
	Endpoint string
	GameID   string
	Err      error
}

func (e *FetchError) Error() string {
	if e.GameID != "" {
		return fmt.Sprintf("fetch %s for game %s: %v", e.Endpoint, e.GameID, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AsFetchError attempts to unwrap an error into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// ErrMissingResultSet indicates the upstream payload lacked an expected table.
var ErrMissingResultSet = errors.New("result set missing from response")
