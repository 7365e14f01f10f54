package cli

const rootUsage = "usage: magiclink <bucket-name> <email-address> [--region <region>]"

// UsageError reports missing positional arguments. It is returned before
// any network call is made.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}
