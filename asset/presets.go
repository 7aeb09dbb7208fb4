package asset

// ThreeBodyPresets holds the initial conditions for the three-body view
// Bodies are listed in editor order; colors are packed RGB
const ThreeBodyPresets = `
default = "figure-eight"
order = ["figure-eight", "mini-solar-system", "chaotic-dance", "collapsing-figure-eight"]

[presets.figure-eight]
title = "Figure-8"
bodies = [
    { mass = 1.0, position = [0.970, -0.243, 0.0], velocity = [0.466, 0.432, 0.0], color = 0xFFA500 },
    { mass = 1.0, position = [-0.970, 0.243, 0.0], velocity = [0.466, 0.432, 0.0], color = 0x00BFFF },
    { mass = 1.0, position = [0.0, 0.0, 0.0], velocity = [-0.932, -0.864, 0.0], color = 0xFFFFFF },
]

[presets.mini-solar-system]
title = "Mini Solar System"
bodies = [
    { mass = 1000.0, position = [0.0, 0.0, 0.0], velocity = [0.0, 0.0, 0.0], color = 0xFFD700 },
    { mass = 10.0, position = [8.0, 0.0, 0.0], velocity = [0.0, 3.0, 0.0], color = 0x00FF00 },
    { mass = 1.0, position = [-12.0, 0.0, 0.0], velocity = [0.0, -2.0, 0.0], color = 0x87CEEB },
]

[presets.chaotic-dance]
title = "Chaotic Dance"
bodies = [
    { mass = 10.0, position = [5.0, 0.0, 0.0], velocity = [0.0, 1.0, 0.0], color = 0xFFA500 },
    { mass = 10.0, position = [-5.0, 0.0, 0.0], velocity = [0.0, -1.0, 0.0], color = 0x00BFFF },
    { mass = 10.0, position = [0.0, 5.0, 0.0], velocity = [-1.0, 0.0, 0.0], color = 0xFFFFFF },
]

[presets.collapsing-figure-eight]
title = "Collapsing Figure-8"
bodies = [
    { mass = 1.0, position = [0.970, -0.243, 0.0], velocity = [0.466, 0.432, 0.0], color = 0xFFA500 },
    { mass = 1.0, position = [-0.970, 0.243, 0.0], velocity = [0.466, 0.432, 0.0], color = 0x00BFFF },
    { mass = 1.0, position = [0.0, 0.0, 0.0], velocity = [-0.95, -0.864, 0.0], color = 0xFFFFFF },
]
`
