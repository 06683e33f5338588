// Package middleware holds the HTTP middleware chain and its members.
package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

type Chain struct {
	stack []Middleware
}

func New() *Chain {
	return &Chain{}
}

func (c *Chain) Use(mw Middleware) {
	c.stack = append(c.stack, mw)
}

func (c *Chain) Then(h http.Handler) http.Handler {
	return c.Apply(h)
}

func (c *Chain) Apply(h http.Handler) http.Handler {
	for i := len(c.stack) - 1; i >= 0; i-- {
		h = c.stack[i](h)
	}
	return h
}
