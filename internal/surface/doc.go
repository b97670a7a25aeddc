// Package surface provides host surfaces for the editor controller.
//
// Memory models a contentEditable element: it displays a markup tree and
// edits it in place the way a browser edits the DOM, leaving the
// controller to read the result back. Terminal draws a Memory to a
// terminal backend and turns key events into edits.
package surface
