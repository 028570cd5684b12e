// Package output turns a decoded upstream payload into the string handed
// back to a tool caller.
//
// Every successful result goes through the same three steps:
//
//	Shape     prune the tree for the requested detail level
//	Serialize render it as indented JSON or markdown
//	Truncate  cap the text at CharacterLimit runes
//
// [Render] runs all three. Errors never pass through this package.
package output
