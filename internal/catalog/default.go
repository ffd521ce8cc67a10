package catalog

// Default returns the built-in household catalog.
func Default() *Catalog {
	return &Catalog{
		Daily: []Task{
			{ID: "dishes", Name: "Do dishes", Duration: "15 min", Priority: PriorityHigh},
			{ID: "kitchen_counter", Name: "Wipe kitchen counters", Duration: "5 min", Priority: PriorityHigh},
			{ID: "make_beds", Name: "Make beds", Duration: "5 min", Priority: PriorityMedium},
			{ID: "tidy_living", Name: "Tidy living room", Duration: "10 min", Priority: PriorityMedium},
			{ID: "bathroom_quick", Name: "Quick bathroom wipe", Duration: "5 min", Priority: PriorityMedium},
			{ID: "take_out_trash", Name: "Take out trash (if full)", Duration: "3 min", Priority: PriorityLow},
		},
		Weekly: Weekly{
			{Day: "Monday", Tasks: []Task{{ID: "vacuum", Name: "Vacuum main areas", Duration: "20 min"}}},
			{Day: "Tuesday", Tasks: []Task{{ID: "bathroom_deep", Name: "Deep clean bathroom", Duration: "25 min"}}},
			{Day: "Wednesday", Tasks: []Task{{ID: "dust", Name: "Dust surfaces", Duration: "15 min"}}},
			{Day: "Thursday", Tasks: []Task{{ID: "kitchen_deep", Name: "Deep clean kitchen", Duration: "30 min"}}},
			{Day: "Friday", Tasks: []Task{{ID: "floors", Name: "Mop floors", Duration: "15 min"}}},
			{Day: "Saturday", Tasks: []Task{{ID: "laundry", Name: "Do laundry", Duration: "10 min active"}}},
			{Day: "Sunday", Tasks: []Task{{ID: "rest", Name: "Rest day / catch up", Duration: "0 min"}}},
		},
	}
}
