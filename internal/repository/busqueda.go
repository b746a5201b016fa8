package repository

import "strings"

var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// patronContiene builds an ILIKE pattern that matches q as a literal
// substring. Use it with ESCAPE '\'.
func patronContiene(q string) string {
	return "%" + escapeLike.Replace(q) + "%"
}
