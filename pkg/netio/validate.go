package netio

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/nestgraph/pkg/errors"
	"github.com/matzehuels/nestgraph/pkg/network"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a description before hydration: struct constraints first,
// then identifier syntax of every model and parameter. Unknown models are not
// an error here; the network reports them through Problems.
func Validate(desc *network.Description) error {
	if desc == nil {
		return errors.New(errors.ErrCodeInvalidInput, "description cannot be nil")
	}
	if err := validate.Struct(desc); err != nil {
		return formatValidationError(err)
	}
	if err := desc.CheckNodeIDs(); err != nil {
		return err
	}
	for i, n := range desc.Nodes {
		if err := errors.ValidateModelID(n.Model); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d", i)
		}
		for _, p := range n.Params {
			if err := errors.ValidateParamID(p.ID); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d", i)
			}
		}
	}
	for i, c := range desc.Connections {
		if c.Synapse != "" {
			if err := errors.ValidateModelID(c.Synapse); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "connection %d", i)
			}
		}
		for _, p := range c.Params {
			if err := errors.ValidateParamID(p.ID); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "connection %d", i)
			}
		}
	}
	return nil
}

// ValidateNode checks a single node description.
func ValidateNode(desc *network.NodeDescription) error {
	return Validate(&network.Description{Nodes: []network.NodeDescription{*desc}})
}

// ValidateConnection checks a single connection description.
func ValidateConnection(desc *network.ConnectionDescription) error {
	return Validate(&network.Description{Connections: []network.ConnectionDescription{*desc}})
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid description")
	}

	// Report the first violation only.
	for _, e := range validationErrs {
		field := e.Namespace()
		var msg string
		switch e.Tag() {
		case "required":
			msg = "field is required"
		case "max":
			msg = fmt.Sprintf("must not exceed %s", e.Param())
		case "gte":
			msg = fmt.Sprintf("must be at least %s", e.Param())
		case "oneof":
			msg = fmt.Sprintf("must be one of [%s]", e.Param())
		default:
			msg = fmt.Sprintf("validation failed (%s)", e.Tag())
		}
		return errors.New(errors.ErrCodeInvalidInput, "%s: %s", field, msg)
	}
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid description")
}
