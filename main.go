package main

import (
	"net/http"

	"github.com/supdate/supdate/cmd"
	"github.com/supdate/supdate/internals/ownhttp"
)

// set by goreleaser
var version = "dev"

func main() {
	// replace default http client
	http.DefaultClient = ownhttp.New()

	cmd.Version = version
	cmd.Execute()
}
