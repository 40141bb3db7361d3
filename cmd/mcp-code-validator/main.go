package main

import "github.com/robertluiz/mcp-code-validator-sub000/cmd/mcp-code-validator/cmd"

func main() {
	cmd.Execute()
}
