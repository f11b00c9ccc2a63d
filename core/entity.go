package core

// Entity is a unique identifier for a simulation entity
// IDs ascend from 1 and are never reused within a world
type Entity uint64
