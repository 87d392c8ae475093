package main

import "github.com/wrkforce/employee-management/cmd"

func main() {
	cmd.Execute()
}
