package quizshow

// Reference catalog: Git, GitHub and Copilot questions, five per tier.

func referenceLadder() Ladder {
	return Ladder{
		{Slot: 1, Amount: 10},
		{Slot: 2, Amount: 20},
		{Slot: 3, Amount: 50},
		{Slot: 4, Amount: 100},
		{Slot: 5, Amount: 200, Safe: true},
		{Slot: 6, Amount: 300},
		{Slot: 7, Amount: 500},
		{Slot: 8, Amount: 750},
		{Slot: 9, Amount: 1000},
		{Slot: 10, Amount: 2000, Safe: true},
		{Slot: 11, Amount: 3000},
		{Slot: 12, Amount: 4000},
		{Slot: 13, Amount: 5000},
		{Slot: 14, Amount: 7500},
		{Slot: 15, Amount: 10000},
	}
}

var referenceQuestions = []Question{
	{
		ID:   1,
		Tier: TierEasy,
		Text: "What is Git?",
		Options: []string{
			"A programming language",
			"A version control system",
			"A text editor",
			"A cloud hosting service",
		},
		CorrectAnswer: 1,
		Hint:          "Git is a distributed version control system that tracks changes in source code during software development.",
		DebugCode:     "git --version",
		Poll:          []int{5, 85, 6, 4},
	},
	{
		ID:   2,
		Tier: TierEasy,
		Text: "What is a repository in Git?",
		Options: []string{
			"A database of all commit history",
			"A folder containing project files tracked by Git",
			"A backup server",
			"A collaboration platform",
		},
		CorrectAnswer: 1,
		Hint:          "A Git repository is a directory that contains all of your project files and the entire revision history.",
		DebugCode:     "git init\n# Creates a new Git repository",
		Poll:          []int{12, 78, 5, 5},
	},
	{
		ID:   3,
		Tier: TierEasy,
		Text: "What is GitHub?",
		Options: []string{
			"A programming language",
			"A code editor with Git integration",
			"A web-based hosting service for Git repositories",
			"A local Git client",
		},
		CorrectAnswer: 2,
		Hint:          "GitHub is a web-based hosting service for version control using Git. It offers all the distributed version control and source code management functionality of Git plus its own features.",
		DebugCode:     "git remote add origin https://github.com/username/repository.git",
		Poll:          []int{2, 8, 86, 4},
	},
	{
		ID:   4,
		Tier: TierEasy,
		Text: "What command is used to create a new Git repository?",
		Options: []string{
			"git start",
			"git create",
			"git new",
			"git init",
		},
		CorrectAnswer: 3,
		Hint:          "The git init command creates a new Git repository. It can be used to convert an existing, unversioned project to a Git repository or initialize a new, empty repository.",
		DebugCode:     "mkdir new-project\ncd new-project\ngit init",
		Poll:          []int{7, 5, 8, 80},
	},
	{
		ID:   5,
		Tier: TierEasy,
		Text: "What is GitHub Copilot?",
		Options: []string{
			"A flight simulator game",
			"An AI pair programmer that suggests code",
			"A GitHub project manager",
			"A debugging tool",
		},
		CorrectAnswer: 1,
		Hint:          "GitHub Copilot is an AI pair programmer that offers autocomplete-style suggestions as you code. It's powered by OpenAI Codex and trained on billions of lines of public code.",
		DebugCode:     "// GitHub Copilot can suggest entire functions\n// Just start typing and it will provide suggestions",
		Poll:          []int{3, 84, 8, 5},
	},
	{
		ID:   6,
		Tier: TierMedium,
		Text: "How do you stage changes for commit in Git?",
		Options: []string{
			"git stage",
			"git commit",
			"git add",
			"git push",
		},
		CorrectAnswer: 2,
		Hint:          "The git add command adds a change in the working directory to the staging area. It tells Git that you want to include updates to a particular file in the next commit.",
		DebugCode:     "git add filename.txt\n# or stage all changes\ngit add .",
		Poll:          []int{10, 5, 80, 5},
	},
	{
		ID:   7,
		Tier: TierMedium,
		Text: "What is a pull request in GitHub?",
		Options: []string{
			"A request to pull code from the server",
			"A request to merge changes from one branch to another",
			"A method to download code updates",
			"A type of Git repository",
		},
		CorrectAnswer: 1,
		Hint:          "Pull requests let you tell others about changes you've pushed to a branch in a repository on GitHub. Once a pull request is opened, you can discuss and review the potential changes with collaborators before your changes are merged into the base branch.",
		DebugCode:     "# Create a new branch for your feature\ngit checkout -b feature-branch\n# Make changes and push\ngit push origin feature-branch\n# Then create PR on GitHub",
		Poll:          []int{5, 78, 10, 7},
	},
	{
		ID:   8,
		Tier: TierMedium,
		Text: "Which command shows the status of files in a Git repository?",
		Options: []string{
			"git check",
			"git status",
			"git files",
			"git info",
		},
		CorrectAnswer: 1,
		Hint:          "The git status command displays the state of the working directory and the staging area. It lets you see which changes have been staged, which haven't, and which files aren't being tracked by Git.",
		DebugCode:     "git status\n# Shows modified files, staged changes, and branch information",
		Poll:          []int{5, 85, 7, 3},
	},
	{
		ID:   9,
		Tier: TierMedium,
		Text: "What does the git clone command do?",
		Options: []string{
			"Creates a duplicate of a local repository",
			"Creates a copy of a remote repository on your local machine",
			"Creates a new branch in the repository",
			"Creates a backup of the repository",
		},
		CorrectAnswer: 1,
		Hint:          "The git clone command creates a copy of an existing Git repository. It's commonly used to download a project from a remote repository, like one on GitHub.",
		DebugCode:     "git clone https://github.com/username/repository.git",
		Poll:          []int{8, 82, 6, 4},
	},
	{
		ID:   10,
		Tier: TierMedium,
		Text: "Which GitHub feature allows you to save code for later reference without creating a full repository?",
		Options: []string{
			"GitHub Stars",
			"GitHub Bookmarks",
			"GitHub Gists",
			"GitHub Notes",
		},
		CorrectAnswer: 2,
		Hint:          "GitHub Gists are a simple way to share code snippets and useful fragments with others. Every gist is a Git repository, which means it can be forked and cloned.",
		DebugCode:     "# Gists can be created on GitHub.com\n# They can be public or secret\n# Example URL: https://gist.github.com/username/gist-id",
		Poll:          []int{15, 5, 75, 5},
	},
	{
		ID:   11,
		Tier: TierHard,
		Text: "How do you resolve a merge conflict in Git?",
		Options: []string{
			"Use git resolve command",
			"Delete the conflicting branch",
			"Manually edit the files with conflicts, then add and commit them",
			"Use git ignore-conflict command",
		},
		CorrectAnswer: 2,
		Hint:          "Resolving a merge conflict in Git requires manually editing the files to reconcile the conflicting changes. After fixing the conflicts, you need to add the resolved files and complete the merge with a commit.",
		DebugCode:     "# When a conflict occurs during merge:\n# 1. Open the conflicted files\n# 2. Look for markers like <<<<<<< HEAD, =======, and >>>>>>>\n# 3. Edit the files to resolve conflicts\ngit add resolved-file.txt\ngit commit -m \"Resolved merge conflict\"",
		Poll:          []int{10, 5, 80, 5},
	},
	{
		ID:   12,
		Tier: TierHard,
		Text: "What is a Git rebase?",
		Options: []string{
			"A command to reset your repository to a previous state",
			"A way to integrate changes from one branch onto another by moving commits",
			"A tool to visualize the commit history",
			"A method to clean up unnecessary files",
		},
		CorrectAnswer: 1,
		Hint:          "Git rebase is the process of moving or combining a sequence of commits to a new base commit. Rebasing is changing the base of your branch from one commit to another, making it appear as if you'd created your branch from a different commit.",
		DebugCode:     "# Rebasing feature branch onto main\ngit checkout feature\ngit rebase main\n\n# Interactive rebase to modify history\ngit rebase -i HEAD~3  # Rebase last 3 commits",
		Poll:          []int{8, 75, 12, 5},
	},
	{
		ID:   13,
		Tier: TierHard,
		Text: "How does GitHub Copilot handle sensitive information in its suggestions?",
		Options: []string{
			"It automatically encrypts all sensitive data",
			"It includes all data it finds for accuracy",
			"It attempts to filter out personal data and secrets",
			"It requires manual approval for each line of code",
		},
		CorrectAnswer: 2,
		Hint:          "GitHub Copilot is designed to filter out potential secrets like API keys from its training data and suggestions. However, it's still important for developers to review suggestions and not rely on this filtering as a security measure.",
		DebugCode:     "// Copilot tries to avoid suggesting sensitive patterns like:\nconst apiKey = \"ACTUAL_KEY_HERE\" // Don't do this!\n\n// Better to use environment variables:\nconst apiKey = process.env.API_KEY",
		Poll:          []int{5, 5, 85, 5},
	},
	{
		ID:   14,
		Tier: TierHard,
		Text: "Which command would you use to view the commit history of a Git repository?",
		Options: []string{
			"git history",
			"git log",
			"git commits",
			"git show",
		},
		CorrectAnswer: 1,
		Hint:          "The git log command shows the commit logs. It lists the commits made in that repository in reverse chronological order. There are many options to format the output in various ways.",
		DebugCode:     "# Basic log\ngit log\n\n# Compact log format\ngit log --oneline\n\n# Pretty graph\ngit log --graph --oneline --decorate",
		Poll:          []int{5, 82, 8, 5},
	},
	{
		ID:   15,
		Tier: TierHard,
		Text: "What happens under the hood when GitHub Copilot generates code suggestions?",
		Options: []string{
			"It searches Stack Overflow for similar code patterns",
			"It uses pre-written templates stored in a database",
			"It runs a large language model that predicts code based on context",
			"It combines code snippets from existing GitHub repositories",
		},
		CorrectAnswer: 2,
		Hint:          "GitHub Copilot is powered by OpenAI Codex, a large language model trained on billions of lines of public code. It generates suggestions by predicting what code should come next, based on the context and comments provided.",
		DebugCode:     "// Example showing Copilot's understanding of context\n// Let's say you write a comment like:\n\n// Function to calculate factorial of a number\n// Copilot might suggest:\nfunction factorial(n) {\n  if (n <= 1) return 1;\n  return n * factorial(n - 1);\n}",
		Poll:          []int{5, 5, 85, 5},
	},
}
