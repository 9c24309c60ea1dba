package main

import "vehicle-catalogue/cmd"

func main() {
	cmd.Execute()
}
