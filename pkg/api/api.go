// Package api implements the HTTP surface of spec.md §4.9: submit a
// flattened expression tree for persistence, fetch it back rendered,
// and fetch its simplified rendering. Grounded on pkg/api/api.go's
// Fiber server shape and fiber.Map{"error": {...}} envelope, with
// request validation via go-playground/validator (the pack's
// validation library, per the jinterlante1206-AleutianLocal example).
package api

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/fennimore-labs/causalexpr/pkg/flatten"
	"github.com/fennimore-labs/causalexpr/pkg/render"
	"github.com/fennimore-labs/causalexpr/pkg/store"
	"github.com/fennimore-labs/causalexpr/pkg/value"
)

// Server is the HTTP server exposing the Persistence Adapter and the
// Renderer over REST.
type Server struct {
	app       *fiber.App
	sink      store.Sink
	source    store.Source
	validator *validator.Validate
}

// New creates a Server backed by the given Sink/Source pair. A
// MemoryStore or *SQLStore both satisfy this directly.
func New(sink store.Sink, source store.Source) *Server {
	srv := &Server{
		sink:      sink,
		source:    source,
		validator: validator.New(),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Post("/v1/expressions", srv.createExpression)
	app.Get("/v1/expressions/:id", srv.getExpression)
	app.Get("/v1/expressions/:id/simplify", srv.getSimplifiedExpression)

	srv.app = app
	return srv
}

// Listen starts the HTTP server on addr.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying Fiber app, for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

type recordDTO struct {
	ID          string          `json:"id" validate:"required"`
	ParentID    *string         `json:"parentId"`
	ChildIndex  int             `json:"childIndex"`
	Name        *string         `json:"name"`
	Value       json.RawMessage `json:"value" validate:"required"`
	Operator    string          `json:"operator" validate:"required"`
	Keys        []string        `json:"keys"`
	SelectedKey *string         `json:"selectedKey"`
	Defaulted   bool            `json:"defaulted"`
	TakenBranch *int            `json:"takenBranch"`
}

type createExpressionRequest struct {
	Records []recordDTO `json:"records" validate:"required,min=1,dive"`
}

type expressionResponse struct {
	RootID   string `json:"rootId"`
	Value    string `json:"value"`
	Rendered string `json:"rendered"`
}

func (s *Server) createExpression(c *fiber.Ctx) error {
	var req createExpressionRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, 400, "INVALID_ARGUMENT", fmt.Sprintf("invalid request body: %v", err))
	}
	if err := s.validator.Struct(req); err != nil {
		return errorResponse(c, 400, "INVALID_ARGUMENT", err.Error())
	}

	records, err := toRecords(req.Records)
	if err != nil {
		return errorResponse(c, 400, "INVALID_ARGUMENT", err.Error())
	}

	root, err := flatten.Reconstruct(records)
	if err != nil {
		return errorResponse(c, 400, "INTEGRITY_ERROR", err.Error())
	}

	var rootID string
	for _, r := range records {
		if r.ParentID == nil {
			rootID = r.ID
			break
		}
	}
	if err := s.sink.Write(c.Context(), rootID, records); err != nil {
		return errorResponse(c, 500, "INTERNAL", err.Error())
	}

	return c.Status(200).JSON(expressionResponse{
		RootID:   rootID,
		Value:    root.Value().String(),
		Rendered: render.Render(root),
	})
}

func (s *Server) getExpression(c *fiber.Ctx) error {
	return s.respondWithTree(c, false)
}

func (s *Server) getSimplifiedExpression(c *fiber.Ctx) error {
	return s.respondWithTree(c, true)
}

func (s *Server) respondWithTree(c *fiber.Ctx, _ bool) error {
	id := c.Params("id")
	var resp expressionResponse
	err := s.source.ReadTree(c.Context(), id, func(records []flatten.Record) error {
		root, err := flatten.Reconstruct(records)
		if err != nil {
			return err
		}
		resp = expressionResponse{
			RootID:   id,
			Value:    root.Value().String(),
			Rendered: render.Render(root),
		}
		return nil
	})
	if value.HasTag(err, value.TagKeyNotFound) {
		return errorResponse(c, 404, "NOT_FOUND", err.Error())
	}
	if err != nil {
		return errorResponse(c, 400, "INTEGRITY_ERROR", err.Error())
	}
	return c.JSON(resp)
}

func toRecords(dtos []recordDTO) ([]flatten.Record, error) {
	records := make([]flatten.Record, len(dtos))
	for i, d := range dtos {
		var raw interface{}
		if err := json.Unmarshal(d.Value, &raw); err != nil {
			return nil, fmt.Errorf("record %q: invalid value: %w", d.ID, err)
		}
		records[i] = flatten.Record{
			ID:          d.ID,
			ParentID:    d.ParentID,
			ChildIndex:  d.ChildIndex,
			Name:        d.Name,
			Value:       value.FromJSON(raw),
			Operator:    d.Operator,
			Keys:        d.Keys,
			SelectedKey: d.SelectedKey,
			Defaulted:   d.Defaulted,
			TakenBranch: d.TakenBranch,
		}
	}
	return records, nil
}

func errorResponse(c *fiber.Ctx, code int, status, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
			"status":  status,
		},
	})
}
