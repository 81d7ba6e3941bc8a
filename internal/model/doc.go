package model

// Package model defines domain data structures used across the app: the
// selected input file, conversion and fetch tasks, output format specs, and
// status enums. Structures are designed for direct rendering in the UI and
// explicit state transitions.
