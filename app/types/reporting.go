package types

import (
	"github.com/labstack/echo/v4"
)

type QueryRequest struct {
	Query string `json:"query" form:"query"`
}

func NewQueryRequestFromContext(ctx echo.Context) (*QueryRequest, error) {
	var body QueryRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}
