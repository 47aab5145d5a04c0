package main

import "github.com/williamokano/rsyncer/cmd"

func main() {
	cmd.Execute()
}
