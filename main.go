package main

import "tasklist-web.com/tasklist-web/cmd"

func main() {
	cmd.Execute()
}
