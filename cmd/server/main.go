package main

import "github.com/personal-blog-api/cmd/server/commands"

func main() {
	commands.Execute()
}
