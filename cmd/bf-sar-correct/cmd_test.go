package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateCliApp(t *testing.T) {
	app := createCliApp()

	assert.Equal(t, "bf-sar-correct", app.Name)

	names := []string{}
	for _, command := range app.Commands {
		names = append(names, command.Name)
	}
	assert.Contains(t, names, "correct")
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "migrate")
	assert.Contains(t, names, "version")
}
