package main

import "github.com/dbsmedya/phpmigrate/cmd/phpmigrate/cmd"

func main() {
	cmd.Execute()
}
