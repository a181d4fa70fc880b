/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

// The romutil ("Hollicode utils") package contains assorted utilities used in
// various other Hollicode packages. Now, that's a clever way of having a
// "util" package without having a "util" package!
package romutil
