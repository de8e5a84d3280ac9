package exercises

func strength(id, name, description string, reps int, timed, bilateral bool, stretch string) Exercise {
	return Exercise{
		ID:             id,
		Name:           name,
		Description:    description,
		Type:           Strength,
		CurrentReps:    reps,
		IsTimed:        timed,
		IsBilateral:    bilateral,
		IsEnabled:      true,
		RelatedStretch: stretch,
	}
}

func mobility(id, name, description string, reps int, timed, bilateral bool) Exercise {
	return Exercise{
		ID:          id,
		Name:        name,
		Description: description,
		Type:        Mobility,
		CurrentReps: reps,
		IsTimed:     timed,
		IsBilateral: bilateral,
		IsEnabled:   true,
	}
}

// Seed returns the built-in catalog with its starting values.
// Bilateral variants start lower since the count is per side.
func Seed() []Exercise {
	return []Exercise{
		// strength, offered on rest days
		strength("push_ups", "Push-ups", "Hands under shoulders, body in one line, chest to a fist above the floor.", 4, false, false, "Chest doorway stretch"),
		strength("diamond_push_ups", "Diamond Push-ups", "Hands together under the chest, elbows tight to the body.", 4, false, false, "Triceps overhead stretch"),
		strength("pike_push_ups", "Pike Push-ups", "Hips high, lower the head between the hands.", 4, false, false, "Shoulder cross-body stretch"),
		strength("chair_dips", "Chair Dips", "Hands on a sturdy chair behind you, lower until elbows reach 90 degrees.", 4, false, false, "Triceps overhead stretch"),
		strength("squats", "Bodyweight Squats", "Feet shoulder width, sit back until thighs are parallel.", 4, false, false, "Standing quad stretch"),
		strength("lunges", "Reverse Lunges", "Step back and lower the back knee towards the floor.", 3, false, true, "Kneeling hip flexor stretch"),
		strength("bulgarian_split_squats", "Bulgarian Split Squats", "Rear foot on a chair, lower straight down.", 2, false, true, "Kneeling hip flexor stretch"),
		strength("glute_bridges", "Glute Bridges", "Drive through the heels and squeeze at the top.", 4, false, false, "Figure four stretch"),
		strength("single_leg_glute_bridges", "Single-leg Glute Bridges", "One foot planted, the other leg extended.", 3, false, true, "Figure four stretch"),
		strength("calf_raises", "Calf Raises", "Rise onto the toes, pause, lower slowly.", 4, false, false, "Wall calf stretch"),
		strength("single_leg_calf_raises", "Single-leg Calf Raises", "Balance on one foot, full range of motion.", 3, false, true, "Wall calf stretch"),
		strength("plank", "Plank", "Forearms down, brace the core, no sagging hips.", 30, true, false, "Cobra stretch"),
		strength("side_plank", "Side Plank", "Stack the feet, lift the hips off the floor.", 20, true, true, "Standing side bend"),
		strength("hollow_hold", "Hollow Body Hold", "Lower back pressed down, arms and legs extended.", 20, true, false, "Cobra stretch"),
		strength("superman_hold", "Superman Hold", "Lift arms, chest and legs off the floor.", 30, true, false, "Child's pose"),
		strength("wall_sit", "Wall Sit", "Back on the wall, knees at 90 degrees.", 30, true, false, "Standing quad stretch"),
		strength("step_ups", "Step-ups", "Step onto a stable chair or stair, drive through the front heel.", 3, false, true, "Standing hamstring stretch"),

		// mobility, offered on sport days
		mobility("cat_cow", "Cat-Cow", "On all fours, alternate rounding and arching the spine.", 4, false, false),
		mobility("worlds_greatest_stretch", "World's Greatest Stretch", "Lunge, elbow to instep, rotate and reach up.", 3, false, true),
		mobility("deep_squat_hold", "Deep Squat Hold", "Sit at the bottom of a squat, heels down, chest up.", 30, true, false),
		mobility("hip_flexor_stretch", "Kneeling Hip Flexor Stretch", "Half kneel, tuck the pelvis and shift forward.", 30, true, true),
		mobility("thoracic_rotations", "Thoracic Rotations", "On all fours, hand behind the head, rotate the upper back.", 4, false, true),
		mobility("shoulder_dislocates", "Shoulder Dislocates", "Wide grip on a band or towel, pass it over the head and back.", 4, false, false),
		mobility("hamstring_stretch", "Standing Hamstring Stretch", "Heel on a low step, hinge at the hips.", 30, true, true),
		mobility("pigeon_pose", "Pigeon Pose", "Front shin across, back leg long, sink the hips.", 30, true, true),
		mobility("childs_pose", "Child's Pose", "Knees wide, sit back on the heels, arms long.", 30, true, false),
		mobility("downward_dog", "Downward Dog", "Hips high, press the heels towards the floor.", 30, true, false),
		mobility("cossack_squats", "Cossack Squats", "Wide stance, shift to one side keeping the other leg straight.", 3, false, true),
		mobility("hip_circles", "Standing Hip Circles", "Hands on a wall, draw big circles with the knee.", 4, false, true),
		mobility("wrist_mobility", "Wrist Mobility", "On all fours, rock forward and back over the wrists.", 4, false, false),
	}
}

// seedReps is the starting count of a built-in exercise; user created exercises fall back
// to the generic defaults.
func seedReps(id string, timed bool) int {
	for _, ex := range Seed() {
		if ex.ID == id {
			return ex.CurrentReps
		}
	}
	if timed {
		return DefaultSeconds
	}
	return DefaultReps
}
