// @title           AgriHub API
// @version         1.0
// @description     Marketplace backend for farm and pet services (Swagger documentation).
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /

package main

import "agrihub_backend/internal/app"

func main() {
	app.Run()
}
