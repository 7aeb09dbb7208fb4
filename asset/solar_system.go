package asset

// SolarSystemConfig is the solar-system catalog
// Distances are in AU, radii in Earth radii, moon and ring sizes in km
// Negative rotation periods are retrograde
const SolarSystemConfig = `
[sun]
name = "Sun"
local_name = "太陽"
radius_earth = 109.0
axial_tilt = 7.25
rotation_hours = 609.12
color = 0xFFD700
texture = "2k_sun.jpg"
description = "The star at the center of the system. About 109 Earth diameters across and over 99.8% of its mass. Shines by nuclear fusion."

[[planets]]
name = "Mercury"
local_name = "水星"
radius_earth = 0.38
au = 0.39
period_days = 88.0
inclination = 7.0
eccentricity = 0.205
axial_tilt = 0.03
rotation_hours = 1407.6
color = 0x9C9C9C
texture = "2k_mercury.jpg"
description = "Closest planet to the Sun. Almost no atmosphere, so day and night temperatures swing wildly. Mostly rock and metal."

[[planets]]
name = "Venus"
local_name = "金星"
radius_earth = 0.95
au = 0.72
period_days = 225.0
inclination = 3.4
eccentricity = 0.007
axial_tilt = 177.4
rotation_hours = -5832.5
color = 0xE6C27A
texture = "2k_venus_surface.jpg"
description = "A scorching world under thick carbon dioxide clouds. Spins very slowly and backwards relative to most planets."

[[planets]]
name = "Earth"
local_name = "地球"
radius_earth = 1.0
au = 1.0
period_days = 365.25
inclination = 0.0
eccentricity = 0.017
axial_tilt = 23.44
rotation_hours = 23.93
color = 0x2A6FDB
texture = "2k_earth_daymap.jpg"
description = "Our ocean planet. A nitrogen and oxygen atmosphere and a magnetic field shelter its life."
moons = [
    { name = "Moon", radius_km = 1737.0, distance_km = 384400.0, period_days = 27.3, color = 0x888888 },
]

[[planets]]
name = "Mars"
local_name = "火星"
radius_earth = 0.53
au = 1.52
period_days = 687.0
inclination = 1.85
eccentricity = 0.093
axial_tilt = 25.19
rotation_hours = 24.62
color = 0xC1440E
texture = "2k_mars.jpg"
description = "The red planet. Traces of ancient water make it a target in the search for life. Thin carbon dioxide atmosphere."

[[planets]]
name = "Jupiter"
local_name = "木星"
radius_earth = 11.2
au = 5.2
period_days = 4333.0
inclination = 1.3
eccentricity = 0.048
axial_tilt = 3.13
rotation_hours = 9.93
color = 0xD8CA9D
texture = "2k_jupiter.jpg"
description = "The largest planet. A hydrogen and helium giant whose Great Red Spot is a vast storm."
moons = [
    { name = "Io", radius_km = 1821.0, distance_km = 421700.0, period_days = 1.77, color = 0xF9D71C },
    { name = "Europa", radius_km = 1560.0, distance_km = 671034.0, period_days = 3.55, color = 0xA9A9A9 },
    { name = "Ganymede", radius_km = 2634.0, distance_km = 1070412.0, period_days = 7.15, color = 0x8B4513 },
    { name = "Callisto", radius_km = 2410.0, distance_km = 1882709.0, period_days = 16.69, color = 0x4A4A4A },
]

[[planets]]
name = "Saturn"
local_name = "土星"
radius_earth = 9.45
au = 9.58
period_days = 10759.0
inclination = 2.5
eccentricity = 0.054
axial_tilt = 26.73
rotation_hours = 10.66
color = 0xE3D9A5
texture = "2k_saturn.jpg"
description = "Famous for its rings of ice particles. Like Jupiter it is mostly hydrogen and helium."
rings = { inner_km = 74500.0, outer_km = 140180.0, color = 0xAAAAAA }

[[planets]]
name = "Uranus"
local_name = "天王星"
radius_earth = 4.0
au = 19.2
period_days = 30687.0
inclination = 0.77
eccentricity = 0.047
axial_tilt = 97.77
rotation_hours = -17.24
color = 0x9FD8E0
texture = "2k_uranus.jpg"
description = "An ice giant rolling on its side. Methane in the atmosphere makes it look blue."

[[planets]]
name = "Neptune"
local_name = "海王星"
radius_earth = 3.88
au = 30.1
period_days = 60190.0
inclination = 1.77
eccentricity = 0.009
axial_tilt = 28.32
rotation_hours = 16.11
color = 0x3F54BA
texture = "2k_neptune.jpg"
description = "The outermost planet, with the fastest winds in the system. Water, methane and ammonia ices inside."

[[planets]]
name = "Pluto"
local_name = "冥王星"
radius_earth = 0.18
au = 39.5
period_days = 90560.0
inclination = 17.1
eccentricity = 0.248
axial_tilt = 119.6
rotation_hours = -153.3
color = 0xD3D3D3
dwarf = true
description = "Reclassified as a dwarf planet in 2006. Covered in nitrogen ice."
`
