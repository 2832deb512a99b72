package wizardmcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/listwiz/internal/draft"
	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/mcp-go/mcp"
)

// stepReport is one row of the wizard-status response.
type stepReport struct {
	Step     listing.Step         `json:"step"`
	Name     string               `json:"name"`
	Valid    bool                 `json:"valid"`
	Complete bool                 `json:"complete"`
	Errors   []listing.FieldError `json:"errors"`
}

type statusReport struct {
	ID           string           `json:"id"`
	CurrentStep  listing.Step     `json:"currentStep"`
	VisitedSteps []listing.Step   `json:"visitedSteps"`
	Form         listing.FormData `json:"form"`
	Draft        draft.Status     `json:"draft"`
	Steps        []stepReport     `json:"steps"`
}

type navReport struct {
	Moved        bool           `json:"moved"`
	CurrentStep  listing.Step   `json:"currentStep"`
	VisitedSteps []listing.Step `json:"visitedSteps"`
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("wizard-status",
			mcp.WithDescription("Show the listing draft: current step, form values, draft state and per-step validation"),
		),
		s.handleStatus,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("update-field",
			mcp.WithDescription("Set one listing field. Lists take comma separated text or an array, flags take true/false"),
			mcp.WithString("field", mcp.Required(),
				mcp.Description("Field name, e.g. title, description, cycle, price, legalTermsAccepted"),
			),
			mcp.WithString("value", mcp.Required(),
				mcp.Description("New value"),
			),
		),
		s.handleUpdateField,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("go-next",
			mcp.WithDescription("Advance to the next step. Errors on the current step become visible but do not block"),
		),
		s.handleGoNext,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("go-back",
			mcp.WithDescription("Return to the previous step"),
		),
		s.handleGoBack,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("go-to-step",
			mcp.WithDescription("Jump to a visited step or the step right after the current one"),
			mcp.WithNumber("step", mcp.Required(),
				mcp.Description("Step number 1-4"),
			),
		),
		s.handleGoToStep,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("step-errors",
			mcp.WithDescription("List validation errors of a step"),
			mcp.WithNumber("step",
				mcp.Description("Step number 1-4, defaults to the current step"),
			),
			mcp.WithBoolean("visible_only",
				mcp.Description("Only errors on fields the user has touched"),
			),
		),
		s.handleStepErrors,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("attach-files",
			mcp.WithDescription("Select files from disk as listing attachments, replacing the current selection"),
			mcp.WithArray("paths", mcp.Required(),
				mcp.Description("File paths"),
				mcp.Items(map[string]any{"type": "string"}),
			),
			mcp.WithBoolean("preview",
				mcp.Description("Attach as preview files instead of the main files"),
			),
		),
		s.handleAttachFiles,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("clear-draft",
			mcp.WithDescription("Delete the stored draft and restart the wizard from defaults"),
		),
		s.handleClearDraft,
	)
}

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report := statusReport{
		ID:           s.wiz.ID(),
		CurrentStep:  s.wiz.CurrentStep(),
		VisitedSteps: s.wiz.VisitedSteps(),
		Form:         s.wiz.Form(),
		Draft:        s.wiz.Status(),
	}
	for _, step := range listing.Steps() {
		errs := s.wiz.ErrorsForStep(step)
		if errs == nil {
			errs = []listing.FieldError{}
		}
		report.Steps = append(report.Steps, stepReport{
			Step:     step,
			Name:     step.String(),
			Valid:    len(errs) == 0,
			Complete: s.wiz.IsStepComplete(step),
			Errors:   errs,
		})
	}
	return jsonResult(report)
}

func (s *Server) handleUpdateField(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultError("no arguments provided"), nil
	}

	name, ok := args["field"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("missing 'field' parameter"), nil
	}
	field := listing.Field(name)

	raw, ok := args["value"]
	if !ok {
		return mcp.NewToolResultError("missing 'value' parameter"), nil
	}

	var err error
	switch v := raw.(type) {
	case string:
		err = s.wiz.SetFieldText(field, v)
	case bool:
		err = s.wiz.UpdateField(field, v)
	case []any:
		items := make([]string, 0, len(v))
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("value item %d is not a string", i)), nil
			}
			items = append(items, str)
		}
		err = s.wiz.UpdateField(field, items)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported value type %T", raw)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("updated %s", field)), nil
}

func (s *Server) handleGoNext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.navResult(s.wiz.GoNext())
}

func (s *Server) handleGoBack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.navResult(s.wiz.GoBack())
}

func (s *Server) handleGoToStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	step, errResult := stepArg(request.GetArguments(), true, 0)
	if errResult != nil {
		return errResult, nil
	}
	return s.navResult(s.wiz.GoToStep(step))
}

func (s *Server) handleStepErrors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	step, errResult := stepArg(args, false, s.wiz.CurrentStep())
	if errResult != nil {
		return errResult, nil
	}

	visibleOnly, _ := args["visible_only"].(bool)
	var errs []listing.FieldError
	if visibleOnly {
		errs = s.wiz.VisibleErrors(step)
	} else {
		errs = s.wiz.ErrorsForStep(step)
	}
	if errs == nil {
		errs = []listing.FieldError{}
	}
	return jsonResult(errs)
}

func (s *Server) handleAttachFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultError("no arguments provided"), nil
	}

	// mcp-go returns arrays as []any
	pathsRaw, ok := args["paths"].([]any)
	if !ok {
		return mcp.NewToolResultError("'paths' is not an array"), nil
	}
	paths := make([]string, 0, len(pathsRaw))
	for i, p := range pathsRaw {
		str, ok := p.(string)
		if !ok || str == "" {
			return mcp.NewToolResultError(fmt.Sprintf("path %d is not a string", i)), nil
		}
		paths = append(paths, str)
	}

	files, err := listing.OpenFiles(paths)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	preview, _ := args["preview"].(bool)
	if preview {
		s.wiz.SetPreviewFiles(files)
	} else {
		s.wiz.SetAttachedFiles(files)
	}
	return jsonResult(files)
}

func (s *Server) handleClearDraft(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.wiz.ClearDraft(ctx)
	return mcp.NewToolResultText("draft cleared"), nil
}

func (s *Server) navResult(moved bool) (*mcp.CallToolResult, error) {
	return jsonResult(navReport{
		Moved:        moved,
		CurrentStep:  s.wiz.CurrentStep(),
		VisitedSteps: s.wiz.VisitedSteps(),
	})
}

// stepArg reads the "step" argument; JSON numbers arrive as float64.
func stepArg(args map[string]any, required bool, fallback listing.Step) (listing.Step, *mcp.CallToolResult) {
	raw, ok := args["step"]
	if !ok {
		if required {
			return 0, mcp.NewToolResultError("missing 'step' parameter")
		}
		return fallback, nil
	}
	n, ok := raw.(float64)
	if !ok || n != float64(int(n)) {
		return 0, mcp.NewToolResultError("'step' must be a whole number")
	}
	step := listing.Step(int(n))
	if !step.Valid() {
		return 0, mcp.NewToolResultError(fmt.Sprintf("step %d is out of range 1-4", step))
	}
	return step, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
