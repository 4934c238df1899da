// Command profilectl is the terminal client for the Profile Service.
package main

import "github.com/quickhire/profile-engine/internal/cli"

func main() {
	cli.Execute()
}
