package asset

// TourFSMConfig is the guided-tour state graph
// Stop is declared on Active so it bubbles up from either sub-state
const TourFSMConfig = `
initial = "Idle"

[states.Idle]
transitions = [
    { trigger = "Start", target = "Moving" },
]

[states.Active]
on_enter = [
    { action = "DisableControls" },
    { action = "Begin" },
]
on_exit = [
    { action = "CancelAdvance" },
    { action = "EnableControls" },
]
transitions = [
    { trigger = "Stop", target = "Idle" },
]

# Camera and target lerp toward the stop until close enough
[states.Moving]
parent = "Active"
on_update = [
    { action = "Approach" },
]
transitions = [
    { trigger = "Tick", target = "Waiting", guard = "Arrived" },
]

# View is held exactly; one advance is scheduled on entry
[states.Waiting]
parent = "Active"
on_enter = [
    { action = "Hold" },
    { action = "ScheduleAdvance" },
]
on_update = [
    { action = "Hold" },
]
transitions = [
    { trigger = "Advance", target = "Moving" },
]
`
