package main

import "github.com/Kuraiyume/Akari/cmd"

func main() {
	cmd.Execute()
}
