package shoco

import "strings"

// defaultCorpus is a compact sample of common English prose and short
// machine-generated strings (log lines, identifiers, sentences), used to
// train the package's DefaultModel at init time. It deliberately does not
// attempt to reproduce the reference shoco implementation's bundled
// words_en tables — no such data file exists anywhere in this module's
// training material, so compatibility with it is a documented deviation
// (see SPEC_FULL.md). It exists to give zero-configuration callers a
// reasonable general-English model out of the box.
const defaultCorpus = `
The quick brown fox jumps over the lazy dog.
This is a test.
Hello, world! This is a simple sentence for testing purposes.
The request completed successfully after three retries.
Error: connection refused while dialing the remote host.
Please enter your username and password to continue.
In the beginning, there was nothing but darkness and silence.
She sells seashells by the seashore every single summer.
The committee has decided to postpone the meeting until next week.
Thank you for your patience while we process your request.
All systems are operational; no incidents have been reported today.
Warning: disk usage has exceeded ninety percent of total capacity.
The weather today is sunny with a gentle breeze from the west.
Our engineering team shipped the new release ahead of schedule.
Customers reported faster load times after the latest update.
The library was quiet except for the soft rustle of turning pages.
Every morning she walked the dog along the river before breakfast.
The server responded with a successful status after the retry.
Configuration loaded from the default path on the local machine.
Invalid input: expected a positive integer but received a string.
The train departed the station precisely on time this morning.
Scientists discovered a new species of beetle in the rainforest.
The bakery down the street sells fresh bread every single day.
A gentle rain fell over the city as the evening lights came on.
The function returned an unexpected value during the unit test.
Logging in as administrator requires a valid security token.
The package was delivered to the wrong address by mistake.
Children played in the park while their parents watched nearby.
The museum's newest exhibit features artifacts from ancient Rome.
Network latency increased slightly during the afternoon peak hours.
The recipe calls for two cups of flour and a pinch of salt.
After months of planning, the launch finally went as expected.
The committee reviewed the proposal and approved it unanimously.
A sudden storm forced the match to be postponed until Sunday.
The new employee completed onboarding within the first week.
Most users prefer the dark theme over the default light theme.
The algorithm sorts the list in ascending order by default.
Remember to back up your data before applying the update.
The conference attracted thousands of attendees from around the world.
Local authorities issued a statement regarding the road closure.
The garden was full of roses, tulips, and daffodils in spring.
`

var defaultModelCorpusReplacer = strings.NewReplacer("\r\n", "\n")

func init() {
	text := defaultModelCorpusReplacer.Replace(defaultCorpus)
	m, err := Train(strings.NewReader(text), DefaultTrainOptions())
	if err != nil {
		// The embedded corpus is a fixed constant; a failure here means a
		// bug in this package, not a runtime condition callers can
		// recover from.
		panic("shoco: failed to train embedded default model: " + err.Error())
	}
	SetDefaultModel(m)
}
