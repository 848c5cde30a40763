package main

import "github.com/frahmantamala/internship-management/cmd"

func main() {
	cmd.Execute()
}
