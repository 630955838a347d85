package federation

import (
	"fmt"
	"io"

	"github.com/Elysium-Labs-EU/graphctl/internal/types"
)

// ReportRemoval writes the outcome of a delete. Registry errors win over a
// gateway update and come back as an *ApplicationError. A result without
// errors and without a gateway update prints nothing beyond the leading
// blank line.
func ReportRemoval(w io.Writer, result types.RemovalResult) error {
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	if len(result.Errors) > 0 {
		return &ApplicationError{Details: result.Errors}
	}

	if result.UpdatedGateway {
		_, err := fmt.Fprintf(w, "%s\n\n", RemovalNarrative(result))
		return err
	}

	return nil
}

func RemovalNarrative(result types.RemovalResult) string {
	return fmt.Sprintf("The %s service with %s tag was removed from %s. Remaining services were composed.",
		result.ServiceName, result.GraphVariant, result.GraphName)
}

func ReportPush(w io.Writer, result types.PushResult) error {
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	if len(result.Errors) > 0 {
		return &ApplicationError{Details: result.Errors}
	}

	var err error
	if result.UpdatedGateway {
		_, err = fmt.Fprintf(w, "The %s service was pushed to %s@%s. The gateway was recomposed.\n\n",
			result.ServiceName, result.GraphName, result.GraphVariant)
	} else {
		_, err = fmt.Fprintf(w, "The %s service was pushed to %s@%s. The gateway configuration did not change.\n\n",
			result.ServiceName, result.GraphName, result.GraphVariant)
	}
	return err
}
