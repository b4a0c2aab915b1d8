package clarity

const (
	CategoryHomeUnavailable     = "home_unavailable"
	CategoryHospitalDischarge   = "hospital_discharge"
	CategoryFacilityPressure    = "facility_pressure"
	CategoryFallRisk            = "fall_risk"
	CategoryLegalAuthority      = "legal_authority"
	CategoryCognitiveDecline    = "cognitive_decline"
	CategoryHomeMismatch        = "home_mismatch"
	CategoryResponsibleSeverity = "responsible_one_severity"
	CategoryCaregiverBurnout    = "caregiver_burnout"
	CategoryResponsibleIdentity = "responsible_one_identity"
	CategoryFamilyConflict      = "family_conflict"
	CategoryFinancialPressure   = "financial_pressure"
)

// Phrases keep both apostrophe spellings ("can't" / "cant") because the
// normalizer only lower-cases.
func categoryDefs() []Category {
	return []Category{
		{
			ID:         CategoryHomeUnavailable,
			Order:      5,
			Phrases:    []string{"can't go home", "cannot go home", "cant go home"},
			Constraint: "Going back to the current home does not feel safe or realistic right now.",
		},
		{
			// The issue and its choices need both signals; the constraint
			// above fires on the phrase alone.
			ID:       CategoryHospitalDischarge,
			Priority: 10,
			Order:    10,
			Phrases:  []string{"can't go home", "cannot go home", "cant go home"},
			Requires: []string{"hospital"},
			Issue:    "A care decision needs to be made right away because going back home is not an option as things stand.",
			Choices: []string{
				"Ask the hospital team whether they expect a discharge today, tomorrow, or later this week so the timeline is clear.",
				"Clarify whether short-term rehab is an option being considered.",
				"Get a sense of what 24/7 care at home would realistically look like, even if it’s just a rough picture.",
				"Ask whether this was the first fall or part of a pattern over the last few months.",
				"Check if there have been recent changes in walking, balance, or strength.",
			},
		},
		{
			ID:         CategoryFacilityPressure,
			Order:      15,
			Phrases:    []string{"hospital"},
			Constraint: "There is pressure from the hospital or facility to make a discharge plan.",
		},
		{
			ID:         CategoryFallRisk,
			Priority:   20,
			Order:      20,
			Phrases:    []string{"fell", "fall"},
			Issue:      "A safety event, like a fall, has forced everyone to pay attention and make decisions sooner than expected.",
			Constraint: "There is a higher risk of falls or injury that cannot be ignored.",
			Choices: []string{
				"Clarify when the fall happened and what was going on right before it.",
				"Ask whether this was a one-time event or one of several falls recently.",
			},
		},
		{
			ID:       CategoryLegalAuthority,
			Priority: 30,
			Order:    30,
			Phrases: []string{
				"poa",
				"power of attorney",
				"no power of attorney",
				"no poa",
				"guardianship",
				"conservator",
				"no one can decide",
				"no one has authority",
				"hospital needs paperwork",
				"they won't let me sign",
				"cant sign",
				"can't sign",
				"capacity",
				"not capable of deciding",
				"doctor says they lack capacity",
			},
			Issue:      "There is a real question about who is allowed to make decisions or sign paperwork on your family member’s behalf.",
			Constraint: "There is uncertainty or disagreement about who has the legal authority to act or sign on your family member’s behalf.",
			Choices: []string{
				"Find out whether any Power of Attorney documents exist and, if so, who is named in them.",
				"Ask whether the medical team believes your family member can still make their own decisions right now.",
				"Clarify what specific paperwork the hospital or facility is asking for.",
				"Note whether an attorney, case manager, or social worker is already involved who can help with the legal side.",
			},
		},
		{
			ID:       CategoryCognitiveDecline,
			Priority: 40,
			Order:    40,
			Phrases: []string{
				"confused",
				"confusion",
				"memory",
				"forget",
				"not herself",
				"not himself",
				"declining",
				"getting worse",
				"worse",
				"weaker",
				"not bouncing back",
				"parkinson",
				"stroke",
				"dementia",
				"alzheimer",
				"wandering",
				"medication",
				"delirium",
			},
			Issue:      "A medical change or shift in thinking is affecting safety, independence, and how decisions can be made.",
			Constraint: "Changes in health or thinking are limiting independence and increasing the need for support or supervision.",
			Choices: []string{
				"Clarify whether these changes are new and sudden, or part of a slower pattern over time.",
				"Ask whether a doctor, nurse, or therapist has recently evaluated these changes and what they said.",
				"Get clear on whether your family member needs someone nearby or checking in often for safety.",
				"Ask if rehab, home health, or a higher level of care has been mentioned as an option.",
			},
		},
		{
			ID:       CategoryHomeMismatch,
			Priority: 50,
			Order:    50,
			Phrases: []string{
				"too many stairs",
				"stairs are a problem",
				"can't do the stairs",
				"cant do the stairs",
				"can't manage the stairs",
				"cant manage the stairs",
				"house is too big",
				"home is too big",
				"can't keep up with the house",
				"cant keep up with the house",
				"can't keep up with the home",
				"cant keep up with the home",
				"unsafe at home",
				"not safe at home",
				"can't be left alone",
				"cant be left alone",
				"can't live alone",
				"cant live alone",
				"wandering outside",
				"leaves the house",
				"gets lost",
				"forgets the stove",
				"left the stove on",
				"kitchen isn't safe",
				"kitchen isnt safe",
				"bathroom isn't safe",
				"bathroom isnt safe",
				"can't get to the bathroom",
				"cant get to the bathroom",
				"can't get in the shower",
				"cant get in the shower",
				"house doesn't work anymore",
				"house doesnt work anymore",
				"home doesn't work anymore",
				"home doesnt work anymore",
			},
			Issue:      "The current home setup no longer matches what your family member can safely manage day to day.",
			Constraint: "The way the home is set up, or the level of supervision available, does not match current abilities and safety needs.",
			Choices: []string{
				"Name which parts of the home are hardest right now (stairs, bathroom, kitchen, entry, getting in and out).",
				"Get clear on whether someone needs to be present, nearby, or checking in often for the home to feel safe.",
				"Consider whether simple changes (equipment, layout, support) could make the home workable for a short period, even if it’s not a long-term solution.",
				"Notice whether anyone has already brought up the idea of a different home or setting, even casually.",
			},
		},
		{
			ID:       CategoryResponsibleSeverity,
			Priority: 60,
			Order:    60,
			Phrases: []string{
				"i can't keep doing this",
				"i cant keep doing this",
				"i'm drowning",
				"im drowning",
				"i'm falling apart",
				"im falling apart",
				"i can't handle this",
				"i cant handle this",
				"i'm at my limit",
				"im at my limit",
			},
			Issue:      "The person trying to hold everything together is at or near their limit and cannot keep going like this.",
			Constraint: "The person trying to manage everything is overwhelmed and needs immediate clarity and relief, not more tasks.",
			Choices: []string{
				"Identify the single most urgent issue that needs attention right now, even if everything feels urgent.",
				"Set aside anything that is not about immediate safety or time-sensitive decisions until things are more stable.",
				"Notice whether there is even one person or professional who could help carry a small part of this with you.",
				"Break the situation into one or two next steps that feel doable in the next day or two.",
			},
		},
		{
			ID:       CategoryCaregiverBurnout,
			Priority: 70,
			Order:    70,
			Phrases: []string{
				"i'm exhausted",
				"im exhausted",
				"i'm so tired",
				"im so tired",
				"i'm worn out",
				"im worn out",
				"i'm burned out",
				"im burned out",
				"i'm burnt out",
				"im burnt out",
				"i can't keep up",
				"i cant keep up",
				"i'm overwhelmed by caregiving",
				"im overwhelmed by caregiving",
				"i'm doing everything for them",
				"im doing everything for them",
				"i'm taking care of them full time",
				"im taking care of them full time",
			},
			Issue:      "The current caregiving load is too heavy for one person and is no longer sustainable.",
			Constraint: "The current caregiving load is too heavy for one person to sustain without more support or a different plan.",
			Choices: []string{
				"Name which caregiving tasks are taking the most energy from you right now.",
				"Consider whether any of those tasks could be shared, outsourced, or reduced, even temporarily.",
				"Ask whether short-term support (home care, respite, family help) is available, even for a few hours.",
				"Separate what has to happen this week from what can be revisited once things are more stable.",
			},
		},
		{
			ID:       CategoryResponsibleIdentity,
			Priority: 80,
			Order:    80,
			Phrases: []string{
				"i'm the only one",
				"i am the only one",
				"i'm doing this alone",
				"i am doing this alone",
				"no one else will help",
				"i have to figure this out",
				"it's on me",
				"its on me",
				"falls on me",
				"i guess it's up to me",
				"i guess its up to me",
				"i'm trying to manage this",
				"im trying to manage this",
				"i'm trying to handle this",
				"im trying to handle this",
			},
			Issue:      "The person reaching out is carrying the responsibility for this situation largely on their own.",
			Constraint: "Most of the responsibility for this situation is falling on one person instead of being shared.",
			Choices: []string{
				"Name the one or two decisions that actually need to be made first.",
				"List which tasks could be shared, delegated, or delayed, even if it feels hard to ask.",
				"Separate immediate safety issues from everything else that can wait a bit.",
				"Notice whether any professionals (doctors, social workers, case managers, real estate or senior specialists) are already in the picture who could share some of the load.",
			},
		},
		{
			ID:       CategoryFamilyConflict,
			Priority: 90,
			Order:    90,
			Phrases: []string{
				"my brother",
				"my sister",
				"siblings",
				"family disagrees",
				"no one agrees",
				"out of state",
				"won't help",
				"wont help",
				"refuses",
				"arguing",
				"fight",
				"conflict",
			},
			Issue:      "Family dynamics and disagreements are making it harder to move forward together.",
			Constraint: "Family disagreement, distance, or uneven involvement is making it harder to move forward together.",
			Choices: []string{
				"Clarify who actually has decision-making authority right now, legally or practically.",
				"List who is truly available to help, even in small ways, versus who is not.",
				"Separate immediate safety and care needs from longer-term disagreements about what should happen.",
				"Consider whether a neutral third party (case manager, social worker, senior-focused professional) could help keep conversations grounded.",
			},
		},
		{
			ID:       CategoryFinancialPressure,
			Priority: 100,
			Order:    100,
			// "cost" is deliberately broad and also fires on phrases like "at any cost".
			Phrases: []string{
				"can't afford",
				"cant afford",
				"cannot afford",
				"too expensive",
				"no money",
				"medicare won't cover",
				"medicare wont cover",
				"medicaid won't cover",
				"medicaid wont cover",
				"no insurance",
				"no long-term care",
				"no long term care",
				"ltc",
				"cost",
			},
			Issue:      "Money, coverage, and the cost of care are shaping what feels possible right now.",
			Constraint: "Money, coverage, and the cost of care are real limits that have to be factored into any plan.",
			Choices: []string{
				"Ask what Medicare or Medicaid will and will not cover in this situation.",
				"Clarify whether short-term rehab is available under Medicare and what the limits are.",
				"Get a rough sense of what home care hours might cost at different levels of support.",
				"Ask whether the hospital or facility has a financial counselor or case manager who can walk through options.",
			},
		},
	}
}
