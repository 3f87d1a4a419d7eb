// Package main provides mapctl, the command line companion to the strategy
// map server.
//
// Usage:
//
//	mapctl demo --format xlsx -o demo.xlsx
//	mapctl import schools.txt --format md --analyze
//	mapctl geocode "774 SW Sail Ter, Port St. Lucie, FL"
package main

func main() {
	Execute()
}
