// Package handlers provides the HTTP handlers for the compile API and the
// monitoring endpoints.
package handlers
