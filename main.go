package main

import "github.com/scrobbleworks/playback-tools/cmd"

func main() {
	cmd.Execute()
}
