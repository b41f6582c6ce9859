package main

import "github.com/KaramelBytes/reportgen/cmd"

func main() {
	cmd.Execute()
}
