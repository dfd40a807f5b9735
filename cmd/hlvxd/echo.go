package main

import (
	"net/http"
	"time"

	"github.com/hlvx/hlvx-http-rest/pkg/rest"
)

// echoMessage is the request and response body of the echo endpoint.
type echoMessage struct {
	Message string `json:"message" validate:"required"`
}

// healthStatus is the response body of the health endpoint.
type healthStatus struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// echoService is a minimal service demonstrating route declaration.
type echoService struct{}

func (s *echoService) Routes() []rest.Route {
	return []rest.Route{
		{
			Method:   http.MethodGet,
			Path:     "/health",
			Handler:  s.health,
			Summary:  "Health check",
			Tags:     []string{"system"},
			Response: healthStatus{},
		},
		{
			Method:   http.MethodPost,
			Path:     "/echo",
			Handler:  s.echo,
			Summary:  "Echo a message back",
			Tags:     []string{"system"},
			Request:  echoMessage{},
			Response: echoMessage{},
		},
	}
}

func (s *echoService) health(c *rest.Context) error {
	return c.JSON(http.StatusOK, healthStatus{Status: "ok", Time: time.Now().UTC()})
}

func (s *echoService) echo(c *rest.Context) error {
	var msg echoMessage
	if err := c.Bind(&msg); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msg)
}
