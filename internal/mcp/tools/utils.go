package tools

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// stringArg extracts a named string argument from a tool call request,
// trimmed of surrounding whitespace. Absent or non-string values yield "".
func stringArg(req mcp.CallToolRequest, name string) string {
	args := req.GetArguments()
	if args == nil {
		return ""
	}
	v, _ := args[name].(string)
	return strings.TrimSpace(v)
}

// firstFieldError unwraps the first field failure from a validator error.
func firstFieldError(err error) (validator.FieldError, bool) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0], true
	}
	return nil, false
}
