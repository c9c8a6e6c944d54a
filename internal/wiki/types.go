package wiki

// Summary is the canonical page summary returned by the REST API.
type Summary struct {
	Title            string
	Description      string
	Extract          string
	ThumbnailURL     string
	OriginalImageURL string
}

// RelatedTopic is a best-effort pointer to a related page.
type RelatedTopic struct {
	Title  string `json:"title"`
	PageID int64  `json:"pageid"`
}

// CategoryPage is one page of a category membership listing. Continue holds
// the corpus's own continuation token, empty when the listing is exhausted.
type CategoryPage struct {
	Titles   []string
	Continue string
}

// Wire formats below mirror the source API payloads.

type summaryResponse struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Extract       string `json:"extract"`
	Thumbnail     *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	OriginalImage *struct {
		Source string `json:"source"`
	} `json:"originalimage"`
}

type categoriesResponse struct {
	Query *struct {
		Pages map[string]struct {
			Title      string `json:"title"`
			Categories []struct {
				Title string `json:"title"`
			} `json:"categories"`
		} `json:"pages"`
	} `json:"query"`
}

type pageImagesResponse struct {
	Query *struct {
		Pages map[string]struct {
			Title     string `json:"title"`
			Thumbnail *struct {
				Source string `json:"source"`
			} `json:"thumbnail"`
			Original *struct {
				Source string `json:"source"`
			} `json:"original"`
		} `json:"pages"`
	} `json:"query"`
}

type categoryMembersResponse struct {
	Query *struct {
		CategoryMembers []struct {
			Title string `json:"title"`
		} `json:"categorymembers"`
	} `json:"query"`
	Continue *struct {
		CmContinue string `json:"cmcontinue"`
	} `json:"continue"`
}

type relatedResponse struct {
	Pages []RelatedTopic `json:"pages"`
}

type mostReadResponse struct {
	Articles []struct {
		Title           string `json:"title"`
		NormalizedTitle string `json:"normalizedtitle"`
	} `json:"articles"`
}

type pageviewsResponse struct {
	Items []struct {
		Articles []struct {
			Article string `json:"article"`
			Views   int64  `json:"views"`
		} `json:"articles"`
	} `json:"items"`
}

type queryPageResponse struct {
	Query *struct {
		QueryPage *struct {
			Results []struct {
				NS    int    `json:"ns"`
				Title string `json:"title"`
			} `json:"results"`
		} `json:"querypage"`
	} `json:"query"`
}
