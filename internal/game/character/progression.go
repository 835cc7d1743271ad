package character

// GainExperience adds amount and levels up as many times as it covers.
// Non-positive amounts are ignored.
//
// Postcondition: Experience < ExperienceToNext; returns the levels gained.
func (c *Character) GainExperience(amount int) int {
	if amount <= 0 {
		return 0
	}
	c.Experience += amount
	gained := 0
	for c.Experience >= c.ExperienceToNext {
		c.LevelUp()
		gained++
	}
	return gained
}

// LevelUp consumes one level's worth of experience, grows the requirement by
// half, grows every base stat by a tenth (floored), and fully heals.
func (c *Character) LevelUp() {
	c.Experience -= c.ExperienceToNext
	c.Level++
	c.ExperienceToNext = c.ExperienceToNext * 3 / 2
	c.Base.Attack = c.Base.Attack * 11 / 10
	c.Base.Defense = c.Base.Defense * 11 / 10
	c.Base.Health = c.Base.Health * 11 / 10
	c.Base.MaxHealth = c.Base.MaxHealth * 11 / 10
	c.recompute()
	c.Heal()
}
