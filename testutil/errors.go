package testutil

import "github.com/pkg/errors"

// SameErrorString reports whether err and target carry the same message
// once the context added by errors.Wrap is peeled off both.
func SameErrorString(err, target error) bool {
	if err == nil || target == nil {
		return err == target
	}
	return errors.Cause(err).Error() == errors.Cause(target).Error()
}
