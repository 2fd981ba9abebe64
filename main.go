// Package main is the entry point for the vuexpurge CLI.
package main

import "vuexpurge.dev/pkg/vuexpurge/cmd"

func main() {
	cmd.Execute()
}
