// Command mindloop is the command line client for the Mind Loop affirmation
// server. It requests affirmations for a theme, prints them, and can read
// them aloud through a local speech synthesizer.
package main
