package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/crun/internal/commandtree"
)

const testTree = `
name: demo
description: Demo project
commands:
  - name: Build All
    description: Build everything
    command: make all
  - name: web
    description: Web app
    dirname: /srv/web
    commands:
      - name: start
        description: Start the dev server
        command: npm start -- --port {port}
        args:
          port:
            type: input
            description: Port to listen on
            default: "3000"
        onReady:
          pattern: /listening/i
          stdinInput: "o\n"
      - name: stop
        command: npm stop
  - name: db
    commands:
      - name: migrate
        command: migrate up
        interactive: true
setup:
  configDirectory: ~/.demo
  steps:
    - name: user
      type: input
`

func loadTestTree(t *testing.T) *commandtree.Config {
	t.Helper()
	cfg, err := commandtree.Parse([]byte(testTree), commandtree.FormatYAML)
	require.NoError(t, err)
	return cfg
}
