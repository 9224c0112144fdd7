package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommandRegistersAllSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCommand.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"crawl", "index", "search", "calculate-page-rank", "calculate-tf-idf", "stats"} {
		assert.True(t, names[want], "expected %q to be registered", want)
	}
}

func TestRootCommandHasConfigFlag(t *testing.T) {
	flag := rootCommand.PersistentFlags().Lookup("config")
	assert.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)
}
