package main

import "github.com/killallgit/reporadar-api/cmd"

// @title           Repo Radar API
// @version         1.0.0
// @description     GitHub repository search with name filtering and page backfill
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/reporadar-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:3000
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
