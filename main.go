//	@title			Users API
//	@version		1.0
//	@description	User management backend with search, filters and pagination

//	@BasePath	/api

//	@tag.name			users
//	@tag.description	User management operations

//	@tag.name			Operations
//	@tag.description	Operational endpoints for monitoring and health

package main

import (
	"os"

	"github.com/slowerai/backend/cli"
)

func main() {
	cmd := cli.RootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
