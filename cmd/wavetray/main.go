package main

import "github.com/wavetray/wavetray/cmd/wavetray/cmd"

func main() {
	cmd.Execute()
}
