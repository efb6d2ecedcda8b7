package benchmark

const maxSampleContent = 10

// buildSummaryRequest condenses a platform's discovered data into the
// aggregate payload the summarization service expects.
func buildSummaryRequest(platform Platform, candidates []CandidateAccount, content []CompetitorContent) SummaryRequest {
	var followerSum int64
	for _, cand := range candidates {
		followerSum += cand.FollowerCount
	}

	var avgFollowers int64
	if len(candidates) > 0 {
		avgFollowers = followerSum / int64(len(candidates))
	}

	sample := content
	if len(sample) > maxSampleContent {
		sample = sample[:maxSampleContent]
	}

	return SummaryRequest{
		Platform:      platform,
		ProfileCount:  len(candidates),
		ContentCount:  len(content),
		AvgFollowers:  avgFollowers,
		SampleContent: sample,
	}
}
