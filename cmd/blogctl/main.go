// blogctl is the operator CLI for the blog API (seed, wipe, list, update, contract).
package main

import "github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/cli"

func main() {
	cli.Execute()
}
