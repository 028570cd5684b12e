// Package services implements the driving port interfaces.
// Services validate caller input, build upstream requests and pass every
// result through the shaping, rendering and truncation pipeline.
//
// Services only talk to infrastructure through driven ports.
package services
