package main

import "time"

const (
	ProtocolVersion = 1
	writeWait       = 10 * time.Second
	tickRate        = 60 // simulation ticks per second

	defaultCourseSeed   = "prototype-course"
	defaultCourseWidth  = 1080.0
	defaultCourseHeight = 1920.0
	defaultComplexity   = 5
	defaultMarbleCount  = 8

	minComplexity = 1
	maxComplexity = 10

	// gravityY pulls marbles down the course. Units per second squared;
	// tuned so a lone marble clears a full-height course in well under
	// ten seconds despite the lateral wander of the channel path.
	gravityY = 1200.0

	finishRadius          = 50.0
	checkpointGlowRange   = 150.0
	checkpointDedupeRange = 200.0

	marbleDefaultRadius      = 20.0
	marbleDefaultMass        = 5.0
	marbleDefaultFriction    = 0.2
	marbleDefaultRestitution = 0.4

	hardCollisionStrong = 300.0
	hardCollisionMedium = 150.0

	// Section gameplay effects, applied once per marble per tick.
	boosterVelocityGain = 4.0
	spinnerTorque       = 900.0
	slowFieldDamping    = 0.98
	bumperChance        = 0.05
	bumperImpulse       = 90.0

	velocityIterations = 8
	positionIterations = 3

	segmentBaseMin   = 150.0
	segmentBaseMax   = 500.0
	minSegmentLength = 1.0
	lateralMargin    = 100.0

	// railOverlap extends collision rails past each segment joint so
	// marbles cannot slip through the outside of a turn.
	railOverlap = 30.0

	downhillZoneDrop = 200.0

	finishTimeUnset = -1.0
)
